// Package cnpj valida y formatea el CNPJ (Cadastro Nacional da Pessoa Jurídica),
// el registro tributario de 14 dígitos de las personas jurídicas en Brasil.
//
// Los dos últimos dígitos son verificadores módulo 11 calculados sobre los
// 12 y 13 dígitos anteriores respectivamente.
package cnpj

import (
	"errors"
	"fmt"
	"unicode"
)

// Length cantidad de dígitos de un CNPJ sin máscara.
const Length = 14

var (
	ErrEmpty          = errors.New("cnpj: vacío")
	ErrLength         = errors.New("cnpj: debe tener 14 dígitos")
	ErrRepeatedDigits = errors.New("cnpj: todos los dígitos son iguales")
	ErrCheckDigits    = errors.New("cnpj: dígitos verificadores incorrectos")
)

// pesos del primer y segundo dígito verificador, de izquierda a derecha.
var (
	firstWeights  = rotatingWeights(5, 12)
	secondWeights = rotatingWeights(6, 13)
)

// Validate verifica un CNPJ con o sin máscara ("11.444.777/0001-61" o "11444777000161").
func Validate(taxID string) error {
	if taxID == "" {
		return ErrEmpty
	}
	digits := Digits(taxID)
	if len(digits) != Length {
		return fmt.Errorf("%w, se encontraron %d", ErrLength, len(digits))
	}
	if allEqual(digits) {
		return ErrRepeatedDigits
	}
	d1, d2, err := CheckDigits(digits[:12])
	if err != nil {
		return err
	}
	if digits[12] != d1 || digits[13] != d2 {
		return fmt.Errorf("%w: esperado %c%c, recibido %c%c", ErrCheckDigits, d1, d2, digits[12], digits[13])
	}
	return nil
}

// IsValid atajo booleano de Validate.
func IsValid(taxID string) bool {
	return Validate(taxID) == nil
}

// CheckDigits calcula los dos dígitos verificadores (como bytes ASCII) para la base de 12 dígitos.
func CheckDigits(base string) (byte, byte, error) {
	digits := Digits(base)
	if len(digits) != 12 {
		return 0, 0, fmt.Errorf("cnpj: la base debe tener 12 dígitos, se encontraron %d", len(digits))
	}
	d1 := checkDigit(digits, firstWeights)
	d2 := checkDigit(digits+string(d1), secondWeights)
	return d1, d2, nil
}

// checkDigit aplica la regla módulo 11: resto < 2 -> 0, si no 11 - resto.
func checkDigit(digits string, weights []int) byte {
	var sum int
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

// rotatingWeights genera la secuencia de pesos como un contador decreciente
// que vuelve a 9 después de 2.
func rotatingWeights(start, n int) []int {
	out := make([]int, n)
	w := start
	for i := range out {
		out[i] = w
		if w == 2 {
			w = 9
		} else {
			w--
		}
	}
	return out
}

// Format devuelve el CNPJ con máscara XX.XXX.XXX/XXXX-XX; si no tiene 14 dígitos lo devuelve sin cambios.
func Format(taxID string) string {
	d := Digits(taxID)
	if len(d) != Length {
		return taxID
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// Digits elimina todo carácter que no sea dígito ASCII.
func Digits(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

func allEqual(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
