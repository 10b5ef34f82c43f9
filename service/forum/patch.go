package forum

import "encoding/json"

// Field distinguishes the three states a patch value can be in: absent from
// the JSON body (leave untouched), explicit null (clear), or a value.
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Valid = false
		return nil
	}
	f.Valid = true
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// PostUpdate is a partial update; omitted fields are untouched. An explicit
// null (or empty list) for image_urls clears the post's images.
type PostUpdate struct {
	Title      Field[string]   `json:"title"`
	Content    Field[string]   `json:"content"`
	CategoryID Field[uint]     `json:"category_id"`
	ImageURLs  Field[[]string] `json:"image_urls"`
}
