package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

type Instructor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	ClassesTaken int                `bson:"classesTaken,omitempty" json:"classesTaken,omitempty"`
	Classes      []string           `bson:"classes,omitempty" json:"classes,omitempty"`
}
