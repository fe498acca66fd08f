package config

import (
	"fmt"
	"strings"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Presets is a file of saved report requests, one ini section per preset:
//
//	[products-by-category]
//	dataset = Products
//	fields = ProductName, UnitPrice
//	grouping = true
//	sort_by = UnitPrice
//	descending = true
//	filter_values = Beverages, Seafood
type Presets interface {
	Names() []string
	Request(name string) (domain.ReportRequest, error)
}

type iniPresets struct {
	cfg *ini.File
}

func LoadPresets(path string) (Presets, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}
	return &iniPresets{cfg: cfg}, nil
}

func (p *iniPresets) Names() []string {
	var names []string
	for _, section := range p.cfg.Sections() {
		if len(section.Keys()) > 0 {
			names = append(names, section.Name())
		}
	}
	return names
}

func (p *iniPresets) Request(name string) (domain.ReportRequest, error) {
	section, err := p.cfg.GetSection(name)
	if err != nil {
		return domain.ReportRequest{}, fmt.Errorf("preset %s not found", name)
	}

	grouping, err := boolKey(section, "grouping")
	if err != nil {
		return domain.ReportRequest{}, fmt.Errorf("preset %s: %w", name, err)
	}
	descending, err := boolKey(section, "descending")
	if err != nil {
		return domain.ReportRequest{}, fmt.Errorf("preset %s: %w", name, err)
	}

	return domain.ReportRequest{
		Dataset:        domain.DatasetName(section.Key("dataset").String()),
		Fields:         splitList(section.Key("fields").String()),
		Grouping:       grouping,
		SortBy:         section.Key("sort_by").String(),
		SortDescending: descending,
		FilterValues:   splitList(section.Key("filter_values").String()),
	}, nil
}

// boolKey reads an optional boolean; a missing key is false.
func boolKey(section *ini.Section, key string) (bool, error) {
	if !section.HasKey(key) {
		return false, nil
	}
	v, err := section.Key(key).Bool()
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	values := []string{}
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
