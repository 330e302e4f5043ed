package scene

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"softraster/internal/raster"
)

// Color is a raster.Color that unmarshals from any of
//
//	[r, g, b]  [r, g, b, a]  "#rrggbb"  "#rrggbbaa"  "red"
//	{"h": 120, "s": 1, "v": 0.5}
type Color raster.Color

var namedColors = map[string]raster.Color{
	"transparent": raster.Transparent,
	"black":       raster.Black,
	"white":       raster.White,
	"red":         raster.Red,
	"green":       raster.Green,
	"blue":        raster.Blue,
	"magenta":     raster.Magenta,
}

func (c *Color) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("scene: empty color")
	}
	switch data[0] {
	case '[':
		var ch []int
		if err := json.Unmarshal(data, &ch); err != nil {
			return fmt.Errorf("scene: color %s: %w", data, err)
		}
		if len(ch) != 3 && len(ch) != 4 {
			return fmt.Errorf("scene: color %s: want 3 or 4 channels", data)
		}
		ch = append(ch, 255)
		for _, v := range ch[:4] {
			if v < 0 || v > 255 {
				return fmt.Errorf("scene: color %s: channel out of range", data)
			}
		}
		*c = Color(raster.RGBA(uint8(ch[0]), uint8(ch[1]), uint8(ch[2]), uint8(ch[3])))
		return nil
	case '{':
		var hsv struct {
			H float64  `json:"h"`
			S *float64 `json:"s"`
			V *float64 `json:"v"`
		}
		if err := json.Unmarshal(data, &hsv); err != nil {
			return fmt.Errorf("scene: color %s: %w", data, err)
		}
		s, v := 1.0, 1.0
		if hsv.S != nil {
			s = *hsv.S
		}
		if hsv.V != nil {
			v = *hsv.V
		}
		*c = Color(raster.HSV(hsv.H, s, v))
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		col, err := parseColorString(s)
		if err != nil {
			return err
		}
		*c = Color(col)
		return nil
	}
	return fmt.Errorf("scene: unsupported color %s", data)
}

func parseColorString(s string) (raster.Color, error) {
	if col, ok := namedColors[strings.ToLower(s)]; ok {
		return col, nil
	}
	h, ok := strings.CutPrefix(s, "#")
	if !ok || (len(h) != 6 && len(h) != 8) {
		return raster.Color{}, fmt.Errorf("scene: unknown color %q", s)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return raster.Color{}, fmt.Errorf("scene: color %q: %w", s, err)
	}
	b = append(b, 255)
	return raster.RGBA(b[0], b[1], b[2], b[3]), nil
}
