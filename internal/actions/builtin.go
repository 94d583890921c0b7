package actions

import "log/slog"

// RegisterBuiltins registers all built-in actions in the given registry.
func RegisterBuiltins(reg *Registry, logger *slog.Logger) error {
	all := make([]Action, 0, 8)

	all = append(all, RecordActions(logger)...)
	all = append(all, ExprActions()...)
	all = append(all, JQActions()...)

	for _, a := range all {
		if err := reg.Register(a); err != nil {
			return err
		}
	}
	return nil
}
