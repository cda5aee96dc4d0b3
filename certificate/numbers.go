// certificate/numbers.go
package certificate

import (
	"fmt"
	"log"
	"math/rand"
)

const numberAttempts = 50

// generateLearnerNumber produces a unique 6-digit learner number between
// 256001 and 999999. Uniqueness is checked against exists and retried up to
// 50 times; after that a random value is returned anyway — the bound exists
// to avoid an infinite loop, not to guarantee uniqueness under adversarial
// conditions.
func generateLearnerNumber(rng *rand.Rand, exists func(string) (bool, error)) (string, error) {
	for i := 0; i < numberAttempts; i++ {
		number := fmt.Sprintf("%d", 256001+rng.Intn(999999-256001+1))
		taken, err := exists(number)
		if err != nil {
			return "", fmt.Errorf("learner number uniqueness check failed: %w", err)
		}
		if !taken {
			return number, nil
		}
	}
	log.Printf("Learner number generation exhausted %d attempts, returning unchecked value", numberAttempts)
	return fmt.Sprintf("%d", 256001+rng.Intn(999999-256001+1)), nil
}

// generateCertificateNumber produces a unique certificate number in the
// format ATC + 6 digits (e.g. ATC265788), digits ranging 265001-999999.
// Same retry semantics as generateLearnerNumber.
func generateCertificateNumber(rng *rand.Rand, exists func(string) (bool, error)) (string, error) {
	for i := 0; i < numberAttempts; i++ {
		code := fmt.Sprintf("ATC%d", 265001+rng.Intn(999999-265001+1))
		taken, err := exists(code)
		if err != nil {
			return "", fmt.Errorf("certificate number uniqueness check failed: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	log.Printf("Certificate number generation exhausted %d attempts, returning unchecked value", numberAttempts)
	return fmt.Sprintf("ATC%d", 265001+rng.Intn(999999-265001+1)), nil
}
