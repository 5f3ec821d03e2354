package model

// Settings holds operator preferences that survive restarts. Credentials are
// never part of settings; they live in the credential vault.
type Settings struct {
	SelectedPlatforms map[Platform]bool
}

// NewSettings returns Settings with every platform deselected.
func NewSettings() Settings {
	selected := make(map[Platform]bool, len(AllPlatforms()))
	for _, p := range AllPlatforms() {
		selected[p] = false
	}
	return Settings{SelectedPlatforms: selected}
}
