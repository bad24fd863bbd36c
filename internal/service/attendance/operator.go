package attendance

import (
	"context"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/go-chi/jwtauth/v5"
)

// operatorFromContext reads the authenticated principal from the verified JWT claims.
func operatorFromContext(ctx context.Context) (wallet.Operator, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil || claims == nil {
		return wallet.Operator{}, wallet.ErrOperatorUnauthorized
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return wallet.Operator{}, wallet.ErrOperatorUnauthorized
	}

	op := wallet.Operator{UserID: userID}
	op.Username, _ = claims["username"].(string)
	op.Role, _ = claims["role"].(string)
	op.DepartmentID, _ = claims["department_id"].(string)

	return op, nil
}

// scanOperatorFromContext additionally requires the department scans are recorded under.
func scanOperatorFromContext(ctx context.Context) (wallet.Operator, error) {
	op, err := operatorFromContext(ctx)
	if err != nil {
		return wallet.Operator{}, err
	}
	if op.DepartmentID == "" {
		return wallet.Operator{}, wallet.ErrOperatorWithoutDepartment
	}
	return op, nil
}
