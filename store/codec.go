package store

import "encoding/json"

// EncodeRow flattens a tagged struct into a Row via its JSON form.
func EncodeRow(v any) (Row, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	row := make(Row)
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, err
	}
	return row, nil
}

// DecodeRow fills a tagged struct from a Row.
func DecodeRow(row Row, v any) error {
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
