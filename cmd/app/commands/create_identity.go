package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	authUseCase "github.com/allisson/guardpost/internal/auth/usecase"
)

// RunCreateIdentity provisions a new identity with authorization claims.
// Supports both interactive mode (when claimsJSON is empty) and non-interactive
// mode (when claimsJSON is provided). The generated secret is printed exactly
// once in either text or JSON format and never stored in plaintext.
//
// Requirements: Database must be migrated and accessible.
func RunCreateIdentity(
	ctx context.Context,
	identityUseCase authUseCase.IdentityUseCase,
	logger *slog.Logger,
	username string,
	displayName string,
	claimsJSON string,
	isActive bool,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new identity", slog.String("username", username))

	// Parse or prompt for claims
	var claims map[string]string
	var err error

	if claimsJSON == "" {
		// Interactive mode
		claims, err = promptForClaims(io)
		if err != nil {
			return fmt.Errorf("failed to get claims: %w", err)
		}
	} else {
		// Non-interactive mode: parse JSON
		if err := json.Unmarshal([]byte(claimsJSON), &claims); err != nil {
			return fmt.Errorf("failed to parse claims JSON: %w", err)
		}
	}

	if displayName == "" {
		displayName = username
	}

	// Create input; leaving the secret empty makes the use case generate one
	input := &authDomain.CreateIdentityInput{
		Username:    username,
		DisplayName: displayName,
		Claims:      claims,
		IsActive:    isActive,
	}

	// Create the identity
	output, err := identityUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputJSON(output, io.Writer)
	} else {
		outputText(output, io.Writer)
	}

	logger.Info("identity created successfully",
		slog.String("identity_id", output.Identity.ID.String()),
		slog.String("username", username),
		slog.Bool("is_active", isActive),
	)

	return nil
}

// promptForClaims interactively prompts the user to enter claims.
// Shows the well-known claim names and accepts claims until the user declines.
func promptForClaims(io IOTuple) (map[string]string, error) {
	reader := bufio.NewReader(io.Reader)
	writer := io.Writer
	claims := map[string]string{}

	_, _ = fmt.Fprintln(writer, "\nEnter claims for the identity")
	_, _ = fmt.Fprintln(writer, "Well-known claims: role (e.g., 'admin'), permissions (space-separated operations)")
	_, _ = fmt.Fprintln(writer)

	claimNum := 1
	for {
		_, _ = fmt.Fprintf(writer, "Claim #%d\n", claimNum)

		// Get claim name
		_, _ = fmt.Fprint(writer, "Enter claim name (e.g., 'role' or 'permissions'): ")
		name, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read claim name: %w", err)
		}
		name = strings.TrimSpace(name)

		if name == "" {
			return nil, fmt.Errorf("claim name cannot be empty")
		}

		// Get claim value
		_, _ = fmt.Fprint(writer, "Enter claim value (e.g., 'articles:read articles:write'): ")
		value, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read claim value: %w", err)
		}
		value = strings.TrimSpace(value)

		if value == "" {
			return nil, fmt.Errorf("claim value cannot be empty")
		}

		claims[name] = value

		// Ask if user wants to add another
		_, _ = fmt.Fprint(writer, "Add another claim? (y/n): ")
		addAnother, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		addAnother = strings.ToLower(strings.TrimSpace(addAnother))

		if addAnother != "y" && addAnother != "yes" {
			break
		}

		_, _ = fmt.Fprintln(writer)
		claimNum++
	}

	return claims, nil
}

// outputText outputs the result in human-readable text format.
func outputText(output *authDomain.CreateIdentityOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nIdentity created successfully!")
	_, _ = fmt.Fprintf(writer, "Identity ID: %s\n", output.Identity.ID.String())
	_, _ = fmt.Fprintf(writer, "Username: %s\n", output.Identity.Username)
	_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
}

// outputJSON outputs the result in JSON format for machine consumption.
func outputJSON(output *authDomain.CreateIdentityOutput, writer io.Writer) {
	result := map[string]string{
		"identity_id": output.Identity.ID.String(),
		"username":    output.Identity.Username,
		"secret":      output.PlainSecret,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
