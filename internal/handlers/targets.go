package handlers

import (
	"bytes"
	"encoding/json"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/resolver"
	"github.com/labstack/echo/v4"
)

// withTarget flattens record into a map and adds the resolved target. The target key is
// absent for kinds that are never resolved and null when the record is gone.
func withTarget(record interface{}, res resolver.Resolution) (echo.Map, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	out := echo.Map{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	out["target_kind"] = res.Kind
	if !res.Omitted() {
		out["target"] = res.Target
	}
	return out, nil
}
