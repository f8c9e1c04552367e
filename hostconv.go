// hostconv.go: one-directional conversion to host-native Go structures.
package scope

// ToNative converts a runtime value into plain Go data for the embedder:
// nil for undefined/null, bool, float64, string, []any for arrays and
// map[string]any for objects, recursively. Functions (interpreted or native)
// have no host-native representation and yield a *ConversionError.
func ToNative(v Value) (any, error) {
	switch v.Tag {
	case VTUndefined, VTNull:
		return nil, nil
	case VTBool:
		return v.Data.(bool), nil
	case VTNumber:
		return v.Data.(float64), nil
	case VTString:
		return v.Data.(string), nil
	case VTStringObject:
		return v.Data.(*StringObject).Text, nil
	case VTArray:
		items := v.Data.(*Array).Items
		out := make([]any, len(items))
		for i, item := range items {
			conv, err := ToNative(item)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case VTObject:
		entries := v.Data.(*Object).Entries
		out := make(map[string]any, len(entries))
		for k, item := range entries {
			conv, err := ToNative(item)
			if err != nil {
				return nil, err
			}
			out[k] = conv
		}
		return out, nil
	case VTFunction, VTNative:
		return nil, &ConversionError{Msg: "functions have no host-native representation"}
	default:
		return nil, &ConversionError{Msg: "value has no host-native representation"}
	}
}
