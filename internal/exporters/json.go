package exporters

import (
	"github.com/segmentio/encoding/json"
)

func renderJSON(view exportView) ([]byte, error) {
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
