package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserType string

const (
	UserTypeUser      UserType = "user"
	UserTypeModerator UserType = "moderator"
	UserTypeOwner     UserType = "owner"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeUser, UserTypeModerator, UserTypeOwner:
		return true
	}
	return false
}

// CanModerate reports whether the account may pin, lock or remove content.
func (t UserType) CanModerate() bool {
	return t == UserTypeModerator || t == UserTypeOwner
}

type Settings struct {
	DarkMode     bool   `bson:"darkMode" json:"darkMode"`
	HighContrast bool   `bson:"highContrast" json:"highContrast"`
	TextSize     string `bson:"textSize" json:"textSize"`
	TextToSpeech bool   `bson:"textToSpeech" json:"textToSpeech"`
}

// Account keeps denormalized id lists of everything the user authored, voted on or drafted.
type Account struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username           string               `bson:"username" json:"username"`
	Email              string               `bson:"email" json:"email"`
	HashedPassword     string               `bson:"hashedPassword" json:"-"`
	UserType           UserType             `bson:"userType" json:"userType"`
	Score              int                  `bson:"score" json:"score"`
	DateCreated        time.Time            `bson:"dateCreated" json:"dateCreated"`
	Questions          []primitive.ObjectID `bson:"questions" json:"questions"`
	Answers            []primitive.ObjectID `bson:"answers" json:"answers"`
	Comments           []primitive.ObjectID `bson:"comments" json:"comments"`
	UpVotedQuestions   []primitive.ObjectID `bson:"upVotedQuestions" json:"upVotedQuestions"`
	DownVotedQuestions []primitive.ObjectID `bson:"downVotedQuestions" json:"downVotedQuestions"`
	QuestionDrafts     []primitive.ObjectID `bson:"questionDrafts" json:"questionDrafts"`
	AnswerDrafts       []primitive.ObjectID `bson:"answerDrafts" json:"answerDrafts"`
	Settings           Settings             `bson:"settings" json:"settings"`
}

// PublicAccount is an account as shown to anyone but its owner. Email,
// drafts, votes and settings are left out.
type PublicAccount struct {
	ID          primitive.ObjectID   `json:"_id"`
	Username    string               `json:"username"`
	UserType    UserType             `json:"userType"`
	Score       int                  `json:"score"`
	DateCreated time.Time            `json:"dateCreated"`
	Questions   []primitive.ObjectID `json:"questions"`
	Answers     []primitive.ObjectID `json:"answers"`
	Comments    []primitive.ObjectID `json:"comments"`
}

func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:          a.ID,
		Username:    a.Username,
		UserType:    a.UserType,
		Score:       a.Score,
		DateCreated: a.DateCreated,
		Questions:   a.Questions,
		Answers:     a.Answers,
		Comments:    a.Comments,
	}
}

// AccountList names one of the denormalized id lists on Account.
type AccountList string

const (
	ListQuestions          AccountList = "questions"
	ListAnswers            AccountList = "answers"
	ListComments           AccountList = "comments"
	ListUpVotedQuestions   AccountList = "upVotedQuestions"
	ListDownVotedQuestions AccountList = "downVotedQuestions"
	ListQuestionDrafts     AccountList = "questionDrafts"
	ListAnswerDrafts       AccountList = "answerDrafts"
)

// List returns a pointer to the named id list.
func (a *Account) List(name AccountList) *[]primitive.ObjectID {
	switch name {
	case ListQuestions:
		return &a.Questions
	case ListAnswers:
		return &a.Answers
	case ListComments:
		return &a.Comments
	case ListUpVotedQuestions:
		return &a.UpVotedQuestions
	case ListDownVotedQuestions:
		return &a.DownVotedQuestions
	case ListQuestionDrafts:
		return &a.QuestionDrafts
	case ListAnswerDrafts:
		return &a.AnswerDrafts
	}
	return nil
}
