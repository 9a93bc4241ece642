// Package note defines the Note domain entity shared by every layer.
//
// A Note is identified solely by its ID; two notes with the same ID are the
// same note regardless of their other fields. Construct new notes with New so
// the id is generated and the input validated:
//
//	n, err := note.New("Buy milk", "", time.Now().Add(24*time.Hour))
//	if err != nil {
//		// validation.Errors keyed by field ("title", "due_date", ...)
//	}
package note
