package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/passgate/models"
)

// tokenIDSize is the number of random bytes in a token id.
const tokenIDSize = 32

var b64 = base64.RawURLEncoding

// parsedToken is a token split into its three dot-separated parts.
type parsedToken struct {
	id         string
	payloadB64 string
	payload    models.SessionTokenPayload
	signature  []byte
}

// signedPart is the string the signature covers.
func (p parsedToken) signedPart() string {
	return p.id + "." + p.payloadB64
}

// encodeToken builds "tokenId.payloadB64" without the signature.
func encodeToken(tokenID []byte, payload models.SessionTokenPayload) (id, signed string, err error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("encode token payload: %w", err)
	}
	id = b64.EncodeToString(tokenID)
	return id, id + "." + b64.EncodeToString(raw), nil
}

func parseToken(token string) (parsedToken, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return parsedToken{}, ErrTokenMalformed
	}

	if _, err := b64.DecodeString(parts[0]); err != nil {
		return parsedToken{}, fmt.Errorf("%w: token id: %v", ErrTokenMalformed, err)
	}
	raw, err := b64.DecodeString(parts[1])
	if err != nil {
		return parsedToken{}, fmt.Errorf("%w: payload: %v", ErrTokenMalformed, err)
	}
	sig, err := b64.DecodeString(parts[2])
	if err != nil {
		return parsedToken{}, fmt.Errorf("%w: signature: %v", ErrTokenMalformed, err)
	}

	var payload models.SessionTokenPayload
	if err = json.Unmarshal(raw, &payload); err != nil {
		return parsedToken{}, fmt.Errorf("%w: payload json: %v", ErrTokenMalformed, err)
	}

	return parsedToken{id: parts[0], payloadB64: parts[1], payload: payload, signature: sig}, nil
}
