// Package advocates defines the advocate directory record shared by the
// storage backends, the search service and the client view.
//
// # Record Shape
//
// An Advocate carries identity, name, city, degree, a list of specialty
// labels, years of experience, an integer-encoded phone number and a
// creation timestamp. JSON field names follow the directory API:
//
//	{
//	  "id": 1,
//	  "firstName": "Jane",
//	  "lastName": "Doe",
//	  "city": "New York",
//	  "degree": "MD",
//	  "specialties": ["Cardiology"],
//	  "yearsOfExperience": 10,
//	  "phoneNumber": 2125551234,
//	  "createdAt": "2024-01-02T15:04:05Z"
//	}
//
// The full-text search vector is maintained by the store and never appears
// on the Go type.
package advocates
