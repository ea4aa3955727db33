package generate_invoice

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MemberID <= 0 {
		return fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}
	if req.Year < 2000 || req.Year > 2100 {
		return fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}
	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month must be 1..12", ErrInvalidInput)
	}
	return nil
}
