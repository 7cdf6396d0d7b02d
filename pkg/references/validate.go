package references

import (
	"fmt"

	"github.com/agentstation/refselect/pkg/errors"
)

// Validate runs every value check and returns the first failure.
func Validate(v Value, multiValue bool) error {
	if err := ValidatePrefLabels(v); err != nil {
		return err
	}
	if err := ValidateListItemConsistency(v); err != nil {
		return err
	}
	return ValidateMultiValue(v, multiValue)
}

// ValidatePrefLabels rejects references with two preferred labels in the
// same language.
func ValidatePrefLabels(v Value) error {
	for _, ref := range v {
		seen := make(map[string]bool)
		for _, l := range ref.Labels {
			if l.ValueTypeID != PrefLabel {
				continue
			}
			if seen[l.LanguageID] {
				return errors.NewValidationError("labels", l.LanguageID,
					"A reference can have only one prefLabel per language")
			}
			seen[l.LanguageID] = true
		}
	}
	return nil
}

// ValidateListItemConsistency requires all labels of a reference to belong
// to exactly one list item.
func ValidateListItemConsistency(v Value) error {
	for _, ref := range v {
		items := make(map[string]struct{})
		for _, l := range ref.Labels {
			items[l.ListItemID] = struct{}{}
		}
		if len(items) != 1 {
			return errors.NewValidationError("labels", ref,
				fmt.Sprintf("Found multiple list items among labels: %s", ref.URI))
		}
	}
	return nil
}

// ValidateMultiValue rejects more than one reference on a single-value node.
func ValidateMultiValue(v Value, multiValue bool) error {
	if !multiValue && len(v) > 1 {
		return errors.NewValidationError("", len(v), "This node does not allow multiple references.")
	}
	return nil
}
