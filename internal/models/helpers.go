package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateGameID() string {
	return uuid.New().String()
}

func GenerateTransactionID() string {
	return fmt.Sprintf("tx_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}
