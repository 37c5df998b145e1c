// Package centers registers and lists donation centers.
package centers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"bytepantry/internal/domain"
)

// Entry is one center in an import file:
//
//	- name: Central Food Bank
//	  address: 2 Market St
type Entry struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// Parse reads a YAML list of centers. Every entry needs a name.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("centers file is empty")
		}
		return nil, fmt.Errorf("parse centers: %w", err)
	}
	for i := range entries {
		entries[i].Name = strings.TrimSpace(entries[i].Name)
		entries[i].Address = strings.TrimSpace(entries[i].Address)
		if entries[i].Name == "" {
			return nil, fmt.Errorf("center %d: name is required", i+1)
		}
	}
	return entries, nil
}

// Import creates one center per entry, in file order, and returns them with
// their IDs.
func Import(ctx context.Context, repo domain.DonationCenterRepository, entries []Entry) ([]domain.DonationCenter, error) {
	created := make([]domain.DonationCenter, 0, len(entries))
	for _, e := range entries {
		center := domain.DonationCenter{Name: e.Name, Address: e.Address}
		if err := repo.CreateDonationCenter(ctx, &center); err != nil {
			return created, fmt.Errorf("create center %q: %w", e.Name, err)
		}
		created = append(created, center)
	}
	return created, nil
}
