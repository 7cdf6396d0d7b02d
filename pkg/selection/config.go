package selection

import (
	"github.com/google/uuid"

	"github.com/agentstation/refselect/pkg/errors"
	"github.com/agentstation/refselect/pkg/references"
)

// Config is the node configuration the host hands to a reference widget.
type Config struct {
	// MultiValue allows more than one reference to be selected.
	MultiValue bool `json:"multiValue" yaml:"multiValue" mapstructure:"multi_value"`

	// ControlledList is the id of the list options are drawn from.
	ControlledList string `json:"controlledList" yaml:"controlledList" mapstructure:"controlled_list"`

	// Placeholder is shown by the control while nothing is selected.
	Placeholder string `json:"placeholder" yaml:"placeholder" mapstructure:"placeholder"`

	// DefaultValue is applied by the host to new records. It is opaque to
	// the reconciler unless it is a references.Value.
	DefaultValue any `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty" mapstructure:"default_value"`
}

// Validate checks the configuration. ControlledList must be a UUID and a
// typed DefaultValue must itself be a valid value for the node.
func (c Config) Validate() error {
	if c.ControlledList == "" {
		return errors.NewConfigError("selection", "controlledList is required", nil)
	}
	if _, err := uuid.Parse(c.ControlledList); err != nil {
		return errors.NewConfigError("selection",
			"controlledList must be a UUID: "+c.ControlledList, err)
	}
	if v, ok := c.DefaultValue.(references.Value); ok {
		if err := references.Validate(v, c.MultiValue); err != nil {
			return errors.NewConfigError("selection", "invalid defaultValue", err)
		}
	}
	return nil
}
