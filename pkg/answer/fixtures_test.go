package answer_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-answerform/pkg/testsupport"
)

func TestRoundTripFixtures(t *testing.T) {
	for _, path := range testsupport.DefinitionFixtures(t, filepath.Join("testdata", "roundtrip")) {
		t.Run(filepath.Base(path), func(t *testing.T) {
			def := testsupport.MustLoadDefinition(t, path)
			session := testsupport.MustSession(t, def.Answer, def.Fragments...)
			if !session.Issues().Empty() {
				t.Fatalf("unexpected issues: %v", session.Issues().Messages())
			}
			if len(session.Leftovers()) != 0 {
				t.Fatalf("unexpected leftovers: %s", session.Leftovers().JSON())
			}

			got, issues := session.Serialize()
			if !issues.Empty() {
				t.Fatalf("unexpected serialize issues: %v", issues.Messages())
			}
			if got != def.Answer {
				t.Fatalf("round trip mismatch\nwant %s\n got %s", def.Answer, got)
			}
		})
	}
}
