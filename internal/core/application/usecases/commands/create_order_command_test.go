package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certify/internal/core/application/usecases/commands"
	"certify/internal/core/domain/model/kernel"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, "de", "en", "s3://inbox/scan.pdf", "Geburtsurkunde")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "de", cmd.SourceLanguage())
	assert.Equal(t, "en", cmd.TargetLanguage())
	assert.Equal(t, "s3://inbox/scan.pdf", cmd.SourceDocumentRef())
	assert.Equal(t, "Geburtsurkunde", cmd.ExtractedText())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCreateOrderCommand(invalidID, "de", "en", "ref", "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_MissingFields(t *testing.T) {
	id := kernel.NewUUID()

	_, err := commands.NewCreateOrderCommand(id, "", "en", "ref", "text")
	assert.ErrorIs(t, err, commands.ErrSourceLanguageIsRequired)

	_, err = commands.NewCreateOrderCommand(id, "de", "", "ref", "text")
	assert.ErrorIs(t, err, commands.ErrTargetLanguageIsRequired)

	_, err = commands.NewCreateOrderCommand(id, "de", "en", "", "text")
	assert.ErrorIs(t, err, commands.ErrSourceDocumentRefIsRequired)

	_, err = commands.NewCreateOrderCommand(id, "de", "en", "ref", "")
	assert.ErrorIs(t, err, commands.ErrExtractedTextIsRequired)
}

func TestCreateOrderCommand_ValidateRejectsZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
