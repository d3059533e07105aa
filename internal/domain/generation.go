package domain

import "time"

// GenerationLog records one successful image generation.
type GenerationLog struct {
	ID        string    `json:"id" bson:"_id"`
	Prompt    string    `json:"prompt" bson:"prompt"`
	ImageURL  string    `json:"imageUrl" bson:"imageUrl"`
	Model     string    `json:"modelUsed" bson:"modelUsed"`
	Size      int64     `json:"size" bson:"size"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
