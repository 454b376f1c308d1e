// Package someipcfg holds the JSON-derived intermediate configuration
// objects of the SOME/IP daemon and their validators. Objects record
// per-field presence through CfgElement so validators can distinguish an
// absent key from a zero value; validation itself is a pure read.
package someipcfg

import "encoding/json"

// CfgElement wraps one configuration field together with its presence
// state. The zero value is "not set"; Set always transitions to set.
type CfgElement[T any] struct {
	value T
	set   bool
}

func (e *CfgElement[T]) Set(value T) {
	e.value = value
	e.set = true
}

// Get returns the stored value, the zero value when unset.
func (e *CfgElement[T]) Get() T {
	return e.value
}

func (e *CfgElement[T]) IsSet() bool {
	return e.set
}

// UnmarshalJSON marks the element set whenever its key is present, so
// decoding a configuration document fills presence state field by field.
func (e *CfgElement[T]) UnmarshalJSON(data []byte) error {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	e.Set(value)
	return nil
}

func (e CfgElement[T]) MarshalJSON() ([]byte, error) {
	if !e.set {
		return []byte("null"), nil
	}
	return json.Marshal(e.value)
}
