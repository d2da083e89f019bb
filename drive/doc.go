// Package drive is the sole point of contact with the Google Drive v3 API.
// It shapes listing queries from local descriptors, normalizes provider
// responses into the drivedash model, and translates provider failures into a
// small error taxonomy. It holds no state beyond the SDK client and the
// session handle.
package drive
