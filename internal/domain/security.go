/**
 * @description
 * PIN hashing and verification. PINs are stored as bcrypt hashes and verified
 * with bcrypt's constant-time comparison, so a reader of the accounts table
 * cannot recover them.
 */
package domain

import "golang.org/x/crypto/bcrypt"

// dummyPINHash is a valid bcrypt hash of a value no caller can submit. It is
// compared against when an account does not exist, so a failed lookup and a
// wrong PIN cost the same and the miss path leaks nothing through timing.
const dummyPINHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPIN derives the bcrypt hash stored in place of the raw PIN.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPIN reports whether pin matches the stored hash.
func VerifyPIN(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// BurnPINComparison performs a bcrypt comparison that always fails. Call it
// on the account-not-found path of authentication to keep its duration
// aligned with the wrong-PIN path.
func BurnPINComparison(pin string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyPINHash), []byte(pin))
}
