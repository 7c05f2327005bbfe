package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// Enrollment is a class a student added to their cart ("added class"), owned by Email.
type Enrollment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ClassID        string             `bson:"classId" json:"classId"`
	Name           string             `bson:"name" json:"name"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName string             `bson:"instructorName,omitempty" json:"instructorName,omitempty"`
	Price          float64            `bson:"price" json:"price"`
	Email          string             `bson:"email" json:"email"`
}
