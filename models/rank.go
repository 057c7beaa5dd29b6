package models

// RankTier maps an inclusive balance range to a cosmetic Discord role
type RankTier struct {
	RoleID string
	Name   string
	Min    int64
	Max    int64
}

// Contains checks if balance falls inside the tier
func (t RankTier) Contains(balance int64) bool {
	return balance >= t.Min && balance <= t.Max
}

// DefaultRankTiers returns the community's original role ladder
func DefaultRankTiers() []RankTier {
	return []RankTier{
		{RoleID: "1376773295172489277", Name: "Muerto de Hambre", Min: 0, Max: 999_999},
		{RoleID: "1376765075964039229", Name: "Pobreza", Min: 1_000_000, Max: 19_999_999},
		{RoleID: "1376764631745560727", Name: "Clase Media", Min: 20_000_000, Max: 49_999_999},
		{RoleID: "1376765297922674730", Name: "Emprendedores", Min: 50_000_000, Max: 99_999_999},
		{RoleID: "1376765453153730574", Name: "Empresarios", Min: 100_000_000, Max: 149_999_999},
		{RoleID: "1377045517955104858", Name: "Millonarios", Min: 150_000_000, Max: 199_999_999},
		{RoleID: "1377046271281336420", Name: "Multimillonario", Min: 200_000_000, Max: 350_000_000},
	}
}

// FindRankTier returns the first tier containing balance, or nil when none does
func FindRankTier(tiers []RankTier, balance int64) *RankTier {
	for i := range tiers {
		if tiers[i].Contains(balance) {
			return &tiers[i]
		}
	}
	return nil
}
