package compare

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ypbank/txcompare/internal/codec"
	"github.com/ypbank/txcompare/internal/registry"
)

const csvLog = `TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION
1001,DEPOSIT,0,501,50000,1672531200000,SUCCESS,"Initial account funding"
1002,TRANSFER,501,502,15000,1672534800000,FAILURE,"Payment for services, invoice #123"
`

const textLog = `TX_ID: 1001
TX_TYPE: DEPOSIT
FROM_USER_ID: 0
TO_USER_ID: 501
AMOUNT: 50000
TIMESTAMP: 1672531200000
STATUS: SUCCESS
DESCRIPTION: "Initial account funding"

TX_ID: 1002
TX_TYPE: TRANSFER
FROM_USER_ID: 501
TO_USER_ID: 502
AMOUNT: 15000
TIMESTAMP: 1672534800000
STATUS: FAILURE
DESCRIPTION: "Payment for services, invoice #123"
`

func newTestPipeline() *Pipeline {
	return NewPipeline(registry.Default(), zerolog.Nop())
}

func TestRunMatchAcrossFormats(t *testing.T) {
	outcome := newTestPipeline().Run(context.Background(),
		Input{Name: "a.csv", Format: "csv", Reader: strings.NewReader(csvLog)},
		Input{Name: "b.txt", Format: "text", Reader: strings.NewReader(textLog)},
	)

	require.IsType(t, Match{}, outcome)
	assert.Equal(t, 2, outcome.(Match).Records)
}

func TestRunSequentialMatchesConcurrent(t *testing.T) {
	concurrent := newTestPipeline().Run(context.Background(),
		Input{Name: "a", Format: "csv", Reader: strings.NewReader(csvLog)},
		Input{Name: "b", Format: "text", Reader: strings.NewReader(textLog)},
	)

	p := newTestPipeline()
	p.Sequential = true
	sequential := p.Run(context.Background(),
		Input{Name: "a", Format: "csv", Reader: strings.NewReader(csvLog)},
		Input{Name: "b", Format: "text", Reader: strings.NewReader(textLog)},
	)

	assert.Equal(t, concurrent, sequential)
}

func TestRunMismatch(t *testing.T) {
	altered := strings.Replace(csvLog, "15000", "15001", 1)

	outcome := newTestPipeline().Run(context.Background(),
		Input{Name: "a", Format: "csv", Reader: strings.NewReader(csvLog)},
		Input{Name: "b", Format: "csv", Reader: strings.NewReader(altered)},
	)

	require.IsType(t, Mismatch{}, outcome)
	mm := outcome.(Mismatch)
	assert.Equal(t, 1, mm.Index)
	assert.Equal(t, []string{"AMOUNT"}, mm.DifferingFields)
}

func TestRunDecodeFailureTagsSide(t *testing.T) {
	outcome := newTestPipeline().Run(context.Background(),
		Input{Name: "a", Format: "csv", Reader: strings.NewReader(csvLog)},
		Input{Name: "b", Format: "csv", Reader: strings.NewReader("not a header\n")},
	)

	require.IsType(t, DecodeFailure{}, outcome)
	df := outcome.(DecodeFailure)
	assert.Equal(t, SideSecond, df.Side)

	var pe *codec.ParseError
	assert.ErrorAs(t, df.Err, &pe)
}

func TestRunBothSidesFailFirstWins(t *testing.T) {
	outcome := newTestPipeline().Run(context.Background(),
		Input{Name: "a", Format: "csv", Reader: strings.NewReader("bad\n")},
		Input{Name: "b", Format: "csv", Reader: strings.NewReader("also bad\n")},
	)

	require.IsType(t, DecodeFailure{}, outcome)
	assert.Equal(t, SideFirst, outcome.(DecodeFailure).Side)
}

func TestRunUnsupportedFormat(t *testing.T) {
	outcome := newTestPipeline().Run(context.Background(),
		Input{Name: "a", Format: "xml", Reader: strings.NewReader("")},
		Input{Name: "b", Format: "csv", Reader: strings.NewReader(csvLog)},
	)

	require.IsType(t, DecodeFailure{}, outcome)
	df := outcome.(DecodeFailure)
	assert.Equal(t, SideFirst, df.Side)

	var uf *codec.UnsupportedFormat
	require.ErrorAs(t, df.Err, &uf)
	assert.Equal(t, "xml", uf.Identifier)
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := newTestPipeline().Run(ctx,
		Input{Name: "a", Format: "csv", Reader: strings.NewReader(csvLog)},
		Input{Name: "b", Format: "csv", Reader: strings.NewReader(csvLog)},
	)

	require.IsType(t, DecodeFailure{}, outcome)
	assert.ErrorIs(t, outcome.(DecodeFailure).Err, context.Canceled)
}

func TestRunEmptyInputsMatch(t *testing.T) {
	outcome := newTestPipeline().Run(context.Background(),
		Input{Name: "a", Format: "csv", Reader: strings.NewReader("")},
		Input{Name: "b", Format: "bin", Reader: strings.NewReader("")},
	)

	require.IsType(t, Match{}, outcome)
	assert.Equal(t, 0, outcome.(Match).Records)
}

func TestRunAllSingleFailure(t *testing.T) {
	outcomes := newTestPipeline().RunAll(context.Background(),
		Input{Name: "a", Format: "csv", Reader: strings.NewReader("bad\n")},
		Input{Name: "b", Format: "csv", Reader: strings.NewReader(csvLog)},
	)

	require.Len(t, outcomes, 1)
	require.IsType(t, DecodeFailure{}, outcomes[0])
}
