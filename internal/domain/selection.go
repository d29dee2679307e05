package domain

import "fmt"

// Selection tracks the three-step product configuration from the shop page.
// Each slot is independent: choosing a value for one never touches the
// others, and any slot may be re-chosen at any time, including after the
// selection is complete. The zero value is an empty selection.
type Selection struct {
	Bean   BeanType
	Stage  Stage
	Origin Origin
}

// ChooseBean sets the bean type, replacing any prior choice.
func (s *Selection) ChooseBean(b BeanType) { s.Bean = b }

// ChooseStage sets the processing stage, replacing any prior choice.
func (s *Selection) ChooseStage(st Stage) { s.Stage = st }

// ChooseOrigin sets the origin, replacing any prior choice.
func (s *Selection) ChooseOrigin(o Origin) { s.Origin = o }

// IsComplete reports whether all three slots have been chosen.
func (s Selection) IsComplete() bool {
	return s.Bean != "" && s.Stage != "" && s.Origin != ""
}

// Summary returns the display names of the three choices joined in the fixed
// bean → stage → origin order, e.g. "Arabica - Coffee Berry - Mizoram Coffee".
// It is derived on every call, never stored. Returns ErrSelectionIncomplete
// while any slot is unset.
func (s Selection) Summary() (string, error) {
	if !s.IsComplete() {
		return "", ErrSelectionIncomplete
	}
	return fmt.Sprintf("%s - %s - %s", s.Bean.Name(), s.Stage.Name(), s.Origin.Name()), nil
}

// EnquiryText renders the plain-text enquiry message used by the shop
// configurator's WhatsApp hand-off. The layout is fixed; only the three
// display names vary. Returns ErrSelectionIncomplete while any slot is unset.
func (s Selection) EnquiryText() (string, error) {
	if !s.IsComplete() {
		return "", ErrSelectionIncomplete
	}
	return fmt.Sprintf(`Coffee Enquiry - Blue Mountain Coffee

Selected Requirements:
Bean Type: %s
Processing Stage: %s
Origin: %s

Please provide pricing and availability details.`,
		s.Bean.Name(), s.Stage.Name(), s.Origin.Name()), nil
}
