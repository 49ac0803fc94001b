// Package password implements Argon2id password hashing with PHC-formatted
// output strings.
//
// Hashes are self-describing: Verify reads the cost parameters out of the
// encoded string, so parameter changes only affect newly created hashes.
//
// # What this package must NOT do
//
//   - Persist anything. Storage of the encoded hash belongs to the caller's
//     identity provider.
//   - Log or otherwise retain plaintext passwords.
package password
