package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/obraflow/obraflow/internal/db"
	"github.com/obraflow/obraflow/internal/store"
)

// seedFixture mirrors the YAML layout accepted by `obraflow seed`.
type seedFixture struct {
	Organization struct {
		Name     string `yaml:"name"`
		Currency string `yaml:"currency"`
	} `yaml:"organization"`
	Projects []struct {
		Name string `yaml:"name"`
	} `yaml:"projects"`
	Contacts []struct {
		FirstName string `yaml:"firstName"`
		LastName  string `yaml:"lastName"`
		Role      string `yaml:"role"`
	} `yaml:"contacts"`
	Wallets []struct {
		Name     string `yaml:"name"`
		Currency string `yaml:"currency"`
	} `yaml:"wallets"`
	Categories []struct {
		Name string `yaml:"name"`
		Kind string `yaml:"kind"`
	} `yaml:"categories"`
	Movements []struct {
		Project     string  `yaml:"project"`
		Contact     string  `yaml:"contact"`
		Wallet      string  `yaml:"wallet"`
		Category    string  `yaml:"category"`
		Type        string  `yaml:"type"`
		Amount      float64 `yaml:"amount"`
		Currency    string  `yaml:"currency"`
		Description string  `yaml:"description"`
		Date        string  `yaml:"date"`
	} `yaml:"movements"`
}

var seedCmd = &cobra.Command{
	Use:   "seed [fixture.yml]",
	Short: "Load an organization fixture into the database",
	Long:  `Creates an organization with its projects, contacts, wallets, categories and movements from a YAML fixture. Prints the new organization ID.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}

	var fx seedFixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}
	if fx.Organization.Name == "" {
		return fmt.Errorf("fixture must declare organization.name")
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	st := store.New(database, nil)
	ctx := context.Background()

	currency := fx.Organization.Currency
	if currency == "" {
		currency = "ARS"
	}
	orgID, err := st.CreateOrganization(ctx, fx.Organization.Name, currency)
	if err != nil {
		return fmt.Errorf("creating organization: %w", err)
	}

	total := len(fx.Projects) + len(fx.Contacts) + len(fx.Wallets) + len(fx.Categories) + len(fx.Movements)
	bar := progressbar.Default(int64(total), "seeding")

	projects := map[string]string{}
	for _, p := range fx.Projects {
		id, err := st.CreateProject(ctx, orgID, p.Name)
		if err != nil {
			return fmt.Errorf("project %q: %w", p.Name, err)
		}
		projects[p.Name] = id
		bar.Add(1)
	}

	contacts := map[string]string{}
	for _, c := range fx.Contacts {
		id, err := st.CreateContact(ctx, orgID, c.FirstName, c.LastName, c.Role)
		if err != nil {
			return fmt.Errorf("contact %q: %w", c.FirstName+" "+c.LastName, err)
		}
		contacts[c.FirstName+" "+c.LastName] = id
		bar.Add(1)
	}

	wallets := map[string]string{}
	for _, w := range fx.Wallets {
		id, err := st.CreateWallet(ctx, orgID, w.Name, w.Currency)
		if err != nil {
			return fmt.Errorf("wallet %q: %w", w.Name, err)
		}
		wallets[w.Name] = id
		bar.Add(1)
	}

	categories := map[string]string{}
	for _, c := range fx.Categories {
		id, err := st.CreateCategory(ctx, orgID, c.Name, c.Kind)
		if err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}
		categories[c.Name] = id
		bar.Add(1)
	}

	for i, m := range fx.Movements {
		occurred := time.Now()
		if m.Date != "" {
			occurred, err = time.Parse("2006-01-02", m.Date)
			if err != nil {
				return fmt.Errorf("movement %d: bad date %q: %w", i, m.Date, err)
			}
		}
		mcurrency := m.Currency
		if mcurrency == "" {
			mcurrency = currency
		}
		_, err := st.AddMovement(ctx, orgID, store.Movement{
			ProjectID:   projects[m.Project],
			ContactID:   contacts[m.Contact],
			WalletID:    wallets[m.Wallet],
			CategoryID:  categories[m.Category],
			Type:        m.Type,
			Amount:      m.Amount,
			Currency:    mcurrency,
			Description: m.Description,
			OccurredAt:  occurred,
		})
		if err != nil {
			return fmt.Errorf("movement %d: %w", i, err)
		}
		bar.Add(1)
	}

	fmt.Printf("\nOrganización %q creada: %s\n", fx.Organization.Name, orgID)
	return nil
}
