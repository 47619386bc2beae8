package geometry

import "encoding/json"

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MarshalJSON encodes the point as {"x":..,"y":..}.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPoint{p.X, p.Y})
}

// UnmarshalJSON decodes {"x":..,"y":..}; missing fields default to 0.
func (p *Point) UnmarshalJSON(data []byte) error {
	var jp jsonPoint
	if err := json.Unmarshal(data, &jp); err != nil {
		return err
	}
	p.X, p.Y = jp.X, jp.Y
	return nil
}
