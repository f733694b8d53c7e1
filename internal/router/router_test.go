package router

import (
	"testing"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
)

// The plural map drives route registration, so it must cover exactly the
// lookup kinds the repository knows about.
func TestLookupPluralCoversAllKinds(t *testing.T) {
	slugs := repository.LookupKindSlugs()
	if len(lookupPlural) != len(slugs) {
		t.Fatalf("lookupPlural has %d entries, repository registers %d kinds", len(lookupPlural), len(slugs))
	}
	for _, slug := range slugs {
		plural, ok := lookupPlural[slug]
		if !ok {
			t.Errorf("no plural for kind %q", slug)
			continue
		}
		if plural == "" || plural == slug {
			t.Errorf("kind %q: suspicious plural %q", slug, plural)
		}
	}
}
