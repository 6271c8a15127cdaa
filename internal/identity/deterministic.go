package identity

import (
	"strings"
	"time"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(trimmed))
	}
	return uid
}

// ArtifactUUID identifies a generated file by its output path.
func ArtifactUUID(path string) uuid.UUID {
	return UUID("devpot:artifact:" + strings.Trim(strings.TrimSpace(path), "/"))
}

// BuildUUID identifies a build by its start instant.
func BuildUUID(startedAt time.Time) uuid.UUID {
	return UUID("devpot:build:" + startedAt.UTC().Format(time.RFC3339Nano))
}
