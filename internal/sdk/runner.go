package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/dmitrijs2005/esignconn/internal/connerr"
)

// commandEnvelope is one invocation read from the input stream.
type commandEnvelope struct {
	Type  Command         `json:"type"`
	Input json.RawMessage `json:"input"`
}

type outputEnvelope struct {
	Output any `json:"output"`
}

type errorEnvelope struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Runner drives a Connector from a stream of JSON command envelopes,
// writing one JSON envelope per emitted item and one error envelope per
// failed invocation. A failed invocation does not stop the stream.
type Runner struct {
	conn *Connector
	in   io.Reader
	out  io.Writer
}

func NewRunner(conn *Connector, in io.Reader, out io.Writer) *Runner {
	return &Runner{conn: conn, in: in, out: out}
}

func (r *Runner) Run(ctx context.Context) error {
	dec := json.NewDecoder(r.in)
	enc := json.NewEncoder(r.out)

	for {
		var cmd commandEnvelope
		if err := dec.Decode(&cmd); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		sink := SenderFunc(func(item any) error {
			return enc.Encode(outputEnvelope{Output: item})
		})

		if err := r.conn.Execute(ctx, cmd.Type, cmd.Input, sink); err != nil {
			kind := connerr.Classify(err).Kind().String()
			if encErr := enc.Encode(errorEnvelope{Error: err.Error(), Kind: kind}); encErr != nil {
				return encErr
			}
		}
	}
}
