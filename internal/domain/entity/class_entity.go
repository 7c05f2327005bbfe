package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// ClassStatus tracks admin review of a class
type ClassStatus string

const (
	ClassPending  ClassStatus = "pending"
	ClassApproved ClassStatus = "approved"
	ClassDenied   ClassStatus = "denied"
)

// Class field names follow the documents already stored in the classes collection.
type Class struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name             string             `bson:"name" json:"name"`
	Image            string             `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName   string             `bson:"instructorName" json:"instructorName"`
	InstructorEmail  string             `bson:"email" json:"email"`
	AvailableSeats   int                `bson:"Available-seats" json:"Available-seats"`
	Price            float64            `bson:"price" json:"price"`
	NumberOfStudents int                `bson:"NumberOfStudents" json:"NumberOfStudents"`
	Status           ClassStatus        `bson:"status,omitempty" json:"status,omitempty"`
	Feedback         string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

// ClassStat is the aggregate over all classes
type ClassStat struct {
	TotalStudents  int `bson:"totalStudents" json:"totalStudents"`
	AvailableSeats int `bson:"AvailableSeats" json:"AvailableSeats"`
}
