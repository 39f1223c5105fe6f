package banking

import "context"

// billProviders is the static provider directory the bills page offers per
// bill type.
var billProviders = map[string][]string{
	"ELECTRICITY": {"Egyptian Electricity", "North Cairo Electricity", "South Cairo Electricity"},
	"WATER":       {"Cairo Water Company", "Alexandria Water", "Giza Water"},
	"INTERNET":    {"WE Internet", "Vodafone Home", "Orange DSL", "Etisalat Home"},
	"MOBILE":      {"Vodafone", "Orange", "Etisalat", "WE Mobile"},
	"TV":          {"beIN Sports", "OSN", "Nile TV"},
	"INSURANCE":   {"Allianz Egypt", "AXA Egypt", "MetLife"},
}

func (s *service) BillProviders(ctx context.Context, billType string) []string {
	providers, ok := billProviders[billType]

	if !ok {
		return []string{}
	}

	return providers
}
