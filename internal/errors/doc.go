// Package errors provides structured errors for the Devil's Dozen engines
// and the services around them.
//
// Every rule engine reports failures with one of two codes:
//   - CodeInvalidInput for malformed or out-of-range arguments
//   - CodeIllegalOperation for well-formed input that breaks a game rule
//
// Repositories and the game orchestrator add NotFound, AlreadyExists,
// Internal and Unavailable. A failed engine call never mutates the caller's
// state, so both engine codes are Recoverable.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.InvalidInputf("face %d out of range for %s", face, kind)
//	err := errors.IllegalOperation("cannot hold non-scoring dice")
//
// Adding metadata:
//
//	err := errors.IllegalOperationf("column %d is full", col).
//	    WithMeta("lobby_id", lobbyID).
//	    WithMeta("player_id", playerID)
//
// Wrapping errors:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save game state")
//	}
//
// # Error Checking
//
//	if errors.IsIllegalOperation(err) {
//	    // keep the previous state and ask the player again
//	}
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//	meta := errors.GetMeta(err)
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("host_name", input.HostName, vb)
//	errors.ValidateRange("max_players", input.MaxPlayers, 2, 4, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
