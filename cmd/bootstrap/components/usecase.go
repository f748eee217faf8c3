package components

import (
	"homeclean/internal/domain/order"
	"homeclean/internal/pkg/clock"
	"homeclean/internal/pkg/config"
	"homeclean/internal/pkg/token"
	"homeclean/internal/usecase"
	"homeclean/internal/usecase/commands"
	"homeclean/internal/usecase/queries"
	"homeclean/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewOrderPolicy,
	fx.Annotate(
		token.NewBcryptIssuer,
		fx.As(new(token.Issuer)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewOrderCommands,
		NewPaymentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
	),
)

// NewOrderPolicy builds the admission and lifecycle rules from the booking config.
func NewOrderPolicy(cfg config.Config) (*order.Policy, error) {
	hours, err := order.NewWorkingHours(cfg.Booking.WorkdayStart, cfg.Booking.WorkdayEnd)
	if err != nil {
		return nil, err
	}
	return order.NewPolicy(hours, cfg.Booking.HoldDuration)
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	policy *order.Policy,
	tokens token.Issuer,
	clk clock.Clock,
	cfg config.Config,
) commands.OrderCommands {
	return commands.NewOrderCommands(uow, policy, tokens, clk, cfg.Booking.TransitionMaxAttempts)
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	policy *order.Policy,
	clk clock.Clock,
	cfg config.Config,
) commands.PaymentCommands {
	return commands.NewPaymentCommands(uow, policy, clk, cfg.Booking.TransitionMaxAttempts)
}

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
