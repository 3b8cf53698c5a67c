package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSendReturnLabelCommand_ValidInput(t *testing.T) {
	// Arrange
	returnID := kernel.NewUUID()
	tenantID := kernel.NewTenantID()

	// Act
	cmd, err := commands.NewSendReturnLabelCommand(returnID, tenantID,
		"COL-RET-0042", "https://labels.test/ret-0042.pdf")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, returnID, cmd.ReturnID())
	assert.Equal(t, tenantID, cmd.TenantID())
	assert.Equal(t, "COL-RET-0042", cmd.TrackingNumber())
	assert.Equal(t, "https://labels.test/ret-0042.pdf", cmd.LabelURL())
	assert.NoError(t, cmd.Validate())
}

func TestNewSendReturnLabelCommand_MissingTrackingNumber(t *testing.T) {
	// Act
	_, err := commands.NewSendReturnLabelCommand(kernel.NewUUID(), kernel.NewTenantID(),
		"", "https://labels.test/ret.pdf")

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestSendReturnLabelCommand_ZeroValueFailsValidation(t *testing.T) {
	// Arrange
	var cmd commands.SendReturnLabelCommand

	// Act
	err := cmd.Validate()

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrSendReturnLabelCommandIsNotConstructed)
}
