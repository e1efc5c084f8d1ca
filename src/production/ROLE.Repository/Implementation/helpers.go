package implementation

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fromBSONMap converts a decoded BSON document into plain Go values so the
// service layer never sees driver types (primitive.DateTime, primitive.A).
func fromBSONMap(raw bson.M) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		out[key] = fromBSONValue(value)
	}
	return out
}

func fromBSONValue(value any) any {
	switch v := value.(type) {
	case primitive.DateTime:
		return v.Time().UTC()
	case bson.M:
		return fromBSONMap(v)
	case primitive.A:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = fromBSONValue(item)
		}
		return items
	case primitive.ObjectID:
		return v.Hex()
	default:
		return value
	}
}
