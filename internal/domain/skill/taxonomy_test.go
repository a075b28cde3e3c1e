package skill

import (
	"testing"

	"github.com/google/uuid"
)

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Python  ", "python"},
		{"Python (Programming Language)", "python"},
		{"Node   JS", "node js"},
		{"Docker (Software)", "docker"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTaxonomy_Lookup(t *testing.T) {
	py := Skill{ID: uuid.New(), Name: "Python", Type: TypeTechnical, Category: "Software Development"}
	comm := Skill{ID: uuid.New(), Name: "Communication", Type: TypeSoft, Category: "Interpersonal"}
	tax := NewTaxonomy([]Skill{py, comm})

	if tax.Len() != 2 {
		t.Fatalf("expected 2 skills, got %d", tax.Len())
	}

	got, ok := tax.ByName("python (programming language)")
	if !ok || got.ID != py.ID {
		t.Fatalf("expected alias lookup to resolve Python")
	}
	if !tax.IsTechnical(py.ID) {
		t.Fatalf("expected Python to be technical")
	}
	if tax.IsTechnical(comm.ID) {
		t.Fatalf("expected Communication to be soft")
	}
	if _, ok := tax.ByID(uuid.New()); ok {
		t.Fatalf("expected unknown id to miss")
	}
}

func TestTaxonomy_ResolveDropsUnknown(t *testing.T) {
	py := Skill{ID: uuid.New(), Name: "Python", Type: TypeTechnical}
	tax := NewTaxonomy([]Skill{py})

	mentions := []Mention{
		{Name: "Python", Weight: 0.8, Confidence: 0.9, Source: "resume"},
		{Name: "Underwater Basket Weaving", Weight: 0.5, Confidence: 0.5},
		{Name: "go", Weight: 0.7, Confidence: 0.7}, // too short, extraction noise
		{Name: "job", Weight: 1, Confidence: 1},    // posting boilerplate
	}

	resolved := tax.Resolve(mentions, nil)
	if len(resolved) != 1 {
		t.Fatalf("expected 1 resolved mention, got %d", len(resolved))
	}
	if resolved[0].Skill.ID != py.ID || resolved[0].Weight != 0.8 {
		t.Fatalf("unexpected resolved mention: %+v", resolved[0])
	}
}

func TestTaxonomy_AllSortedByName(t *testing.T) {
	tax := NewTaxonomy([]Skill{
		{ID: uuid.New(), Name: "Zig"},
		{ID: uuid.New(), Name: "Ada"},
		{ID: uuid.New(), Name: "Go"},
	})
	all := tax.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 skills, got %d", len(all))
	}
	if all[0].Name != "Ada" || all[2].Name != "Zig" {
		t.Fatalf("expected name order, got %v %v %v", all[0].Name, all[1].Name, all[2].Name)
	}
}

func TestValidName(t *testing.T) {
	if ValidName("ab") {
		t.Fatalf("two-character names are noise")
	}
	if ValidName("requirements") {
		t.Fatalf("posting boilerplate is noise")
	}
	if !ValidName("PostgreSQL") {
		t.Fatalf("real skill rejected")
	}
}
