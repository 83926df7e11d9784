package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/soypat/meshsdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// jsonVolume is the on-disk layout of a volume:
//
//	{"size": n, "min": [x, y, z], "max": [x, y, z], "data": [n³ values]}
//
// data is x-major, then y, then z.
type jsonVolume struct {
	Size int        `json:"size"`
	Min  [3]float64 `json:"min"`
	Max  [3]float64 `json:"max"`
	Data []float64  `json:"data"`
}

func toJSONVolume(v *meshsdf.Volume) (jsonVolume, error) {
	if v == nil {
		return jsonVolume{}, fmt.Errorf("%w: nil volume", meshsdf.ErrInvalidInput)
	}
	if err := v.Validate(); err != nil {
		return jsonVolume{}, err
	}
	return jsonVolume{
		Size: v.Size,
		Min:  [3]float64{v.Min.X, v.Min.Y, v.Min.Z},
		Max:  [3]float64{v.Max.X, v.Max.Y, v.Max.Z},
		Data: v.Data,
	}, nil
}

// EncodeJSON returns the compact JSON encoding of v.
func EncodeJSON(v *meshsdf.Volume) ([]byte, error) {
	jv, err := toJSONVolume(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jv)
}

// WriteJSON writes the compact JSON encoding of v to w.
func WriteJSON(w io.Writer, v *meshsdf.Volume) error {
	return writeJSON(w, v, "")
}

// WriteJSONIndent writes v to w with every value on its own line,
// indented by 4 spaces per level.
func WriteJSONIndent(w io.Writer, v *meshsdf.Volume) error {
	return writeJSON(w, v, "    ")
}

func writeJSON(w io.Writer, v *meshsdf.Volume, indent string) error {
	jv, err := toJSONVolume(v)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	return enc.Encode(jv)
}

// CreateJSON writes v to a new file at path, truncating any existing file.
// v is never modified, also when writing fails.
func CreateJSON(path string, v *meshsdf.Volume, indent bool) (err error) {
	// Fail on bad input before touching the file system.
	if _, err := toJSONVolume(v); err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(fp)
	if indent {
		err = WriteJSONIndent(bw, v)
	} else {
		err = WriteJSON(bw, v)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return bw.Flush()
}

// ReadJSON decodes a volume written by WriteJSON and validates it.
func ReadJSON(r io.Reader) (*meshsdf.Volume, error) {
	// Slices so that missing or short bounds are not zero filled.
	var jv struct {
		Size int       `json:"size"`
		Min  []float64 `json:"min"`
		Max  []float64 `json:"max"`
		Data []float64 `json:"data"`
	}
	if err := json.NewDecoder(r).Decode(&jv); err != nil {
		return nil, fmt.Errorf("decoding volume: %w", err)
	}
	lo, err := vecFromJSON("min", jv.Min)
	if err != nil {
		return nil, err
	}
	hi, err := vecFromJSON("max", jv.Max)
	if err != nil {
		return nil, err
	}
	v := &meshsdf.Volume{
		Size: jv.Size,
		Min:  lo,
		Max:  hi,
		Data: jv.Data,
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func vecFromJSON(key string, v []float64) (r3.Vec, error) {
	if len(v) != 3 {
		return r3.Vec{}, fmt.Errorf("%w: volume %q must hold 3 values, got %d", meshsdf.ErrInvalidInput, key, len(v))
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

// OpenJSON reads the volume stored in the file at path.
func OpenJSON(path string) (*meshsdf.Volume, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ReadJSON(bufio.NewReader(fp))
}
