/*
Package auth provides password handling and JWT creation.

# Passwords

Passwords are hashed with bcrypt:

	hash, err := auth.HashPassword(plain)
	err = auth.CheckPassword(plain, hash)

ValidatePassword enforces the registration policy in a fixed order:
length over 8, length under 72 (the bcrypt input limit), no leading or
trailing whitespace, and at least one upper case letter, lower case
letter, number, and special character.

# Tokens

Tokens are HS256 JWTs carrying the user id and an expiry:

	token, err := auth.CreateToken(user, secret, 12*time.Hour)
	userID, err := auth.ParseToken(token, secret)

ParseToken rejects any token not signed with HMAC, including the
classic alg-substitution tricks, and returns ErrInvalidToken for
anything it cannot fully verify.
*/
package auth
