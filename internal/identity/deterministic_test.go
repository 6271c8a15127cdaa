package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestUUIDIsStable(t *testing.T) {
	first := UUID("devpot:artifact:index.html")
	second := UUID("  devpot:artifact:index.html ")
	if first == uuid.Nil || first != second {
		t.Fatalf("expected stable non-nil ids, got %s and %s", first, second)
	}
	if UUID("   ") != uuid.Nil {
		t.Fatalf("expected nil id for blank key")
	}
}

func TestArtifactUUIDIgnoresSlashes(t *testing.T) {
	if ArtifactUUID("/posts/plantuml/index.html") != ArtifactUUID("posts/plantuml/index.html") {
		t.Fatalf("expected leading slash to be ignored")
	}
	if ArtifactUUID("index.html") == ArtifactUUID("pl/index.html") {
		t.Fatalf("expected distinct paths to get distinct ids")
	}
}

func TestBuildUUIDDependsOnInstant(t *testing.T) {
	at := time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)
	if BuildUUID(at) != BuildUUID(at.In(time.FixedZone("CET", 3600))) {
		t.Fatalf("expected the same instant to map to one id")
	}
	if BuildUUID(at) == BuildUUID(at.Add(time.Nanosecond)) {
		t.Fatalf("expected distinct instants to get distinct ids")
	}
}
