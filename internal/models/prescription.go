package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PrescriptionStatusPending = "pending"

type Prescription struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email" json:"email"`
	Filename         string             `bson:"filename" json:"filename"`
	OriginalFilename string             `bson:"original_filename" json:"original_filename"`
	Notes            string             `bson:"notes" json:"notes"`
	UploadedAt       time.Time          `bson:"uploaded_at" json:"uploaded_at"`
	Status           string             `bson:"status" json:"status"`
}
