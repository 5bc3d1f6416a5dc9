package crypto

import "github.com/eyad6789/images-with-memory/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/note_cipher_mock.go -package=mock

// NoteCipherService отвечает за шифрование заметок паролем пользователя.
// Он не знает ничего о форматах изображений и файлах.
// Его единственная задача — превращать текст в конверт и обратно.
//
// Схема работы:
//
//	Envelope = Encrypt(text, password)      (соль и IV генерируются заново)
//	Text     = Decrypt(envelope, password)  (ключ выводится из соли конверта)
//
// Implementations are stateless and safe for concurrent use from
// multiple goroutines.
type NoteCipherService interface {
	// Encrypt derives a 256-bit key from password via PBKDF2-SHA256 and
	// seals plaintext with AES-256-GCM. A fresh random salt (32 bytes)
	// and IV (16 bytes) are generated on every call, so encrypting the
	// same text twice never yields the same envelope.
	// Returns [ErrEmptyPassword] when password is blank.
	Encrypt(plaintext, password string) (models.EncryptedNote, error)

	// Decrypt re-derives the key from the envelope's salt and iteration
	// count, opens the ciphertext, and cross-checks the plaintext against
	// the stored SHA-256 hash when one is present.
	// Returns [ErrDecryptionFailed] on a wrong password or tampered
	// ciphertext and [ErrIntegrityMismatch] when the recovered text does
	// not match the recorded hash.
	Decrypt(envelope models.EncryptedNote, password string) (string, error)
}
