package mongostore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func duplicateKey(msg string) error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: msg}}}
}

func TestDuplicateIndex(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"email": {
			err:  duplicateKey(`E11000 duplicate key error collection: qa.accounts index: email_1 dup key: { email: "a@b.c" }`),
			want: emailIndex,
		},
		"username containing email": {
			err:  duplicateKey(`E11000 duplicate key error collection: qa.accounts index: username_1 dup key: { username: "email index: email_1" }`),
			want: "username_1",
		},
		"not a write exception": {
			err:  errors.New("index: email_1"),
			want: "",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, duplicateIndex(tc.err))
		})
	}
}
