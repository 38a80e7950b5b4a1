package cmd

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSeedFixtureParses(t *testing.T) {
	data, err := os.ReadFile("testdata/fixture.yml")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	var fx seedFixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	if fx.Organization.Name != "Constructora Río de la Plata" {
		t.Errorf("organization: got %q", fx.Organization.Name)
	}
	if len(fx.Projects) != 2 {
		t.Errorf("expected 2 projects, got %d", len(fx.Projects))
	}
	if len(fx.Movements) != 2 {
		t.Errorf("expected 2 movements, got %d", len(fx.Movements))
	}
	if fx.Movements[0].Amount != 1500000 {
		t.Errorf("movement amount: got %f", fx.Movements[0].Amount)
	}
	if fx.Contacts[0].FirstName+" "+fx.Contacts[0].LastName != "Juan López" {
		t.Errorf("contact: got %q %q", fx.Contacts[0].FirstName, fx.Contacts[0].LastName)
	}
}
