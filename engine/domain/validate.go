package domain

import "fmt"

// ValidateCard checks the invariants every card leaving the pipeline must
// hold. It is the exit gate before a card is returned or published.
func ValidateCard(c Card) error {
	if !c.Category.Valid() {
		return fmt.Errorf("validate: category %q not in enumeration", c.Category)
	}
	if c.Atk < MinAtk || c.Atk > MaxAtk {
		return fmt.Errorf("validate: atk %d outside [%d,%d]", c.Atk, MinAtk, MaxAtk)
	}
	if c.Def < MinDef || c.Def > c.Atk {
		return fmt.Errorf("validate: def %d outside [%d,atk=%d]", c.Def, MinDef, c.Atk)
	}
	if len(c.Effects) > MaxEffects {
		return fmt.Errorf("validate: %d effects exceeds cap %d", len(c.Effects), MaxEffects)
	}
	for _, e := range c.Effects {
		if e.Text == "" {
			return fmt.Errorf("validate: effect with empty text")
		}
	}
	if len(c.Tags) > MaxTags {
		return fmt.Errorf("validate: %d tags exceeds cap %d", len(c.Tags), MaxTags)
	}
	if len(c.CardSets) > MaxCardSets {
		return fmt.Errorf("validate: %d card_sets exceeds cap %d", len(c.CardSets), MaxCardSets)
	}
	if len(c.CardImages) > MaxImages {
		return fmt.Errorf("validate: %d card_images exceeds cap %d", len(c.CardImages), MaxImages)
	}
	return nil
}
