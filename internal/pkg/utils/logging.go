package utils

import (
	"context"
	"wellness-availability-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateID returns a new document identifier.
func GenerateID() string {
	return uuid.NewString()
}
