package lighthouse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/tmc/lighthouse/chat"
	"github.com/tmc/lighthouse/session"
)

// RunLineMode holds a conversation over line-oriented input without the
// terminal UI. Each non-blank line of in is sent as a message and the reply
// is written to out. It returns the conversation when in is exhausted or ctx
// is done.
func RunLineMode(ctx context.Context, gw chat.Gateway, in io.Reader, out io.Writer, opts ...session.Option) (*session.Session, error) {
	ctrl := chat.NewController(gw, nil, opts...)
	defer ctrl.Teardown()

	fmt.Fprintf(out, "3AM Friend: %s\n\n", chat.Greeting)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return ctrl.Session(), err
		}
		cmd := ctrl.SubmitText(scanner.Text())
		if cmd == nil {
			continue
		}
		if _, ok := ctrl.Handle(cmd()); !ok {
			log.Printf("[CHAT] unexpected reply message")
		}
		if turn, ok := ctrl.Session().Last(); ok && turn.Author == session.AuthorAssistant {
			fmt.Fprintf(out, "3AM Friend: %s\n\n", turn.Body)
		}
	}
	if err := scanner.Err(); err != nil {
		return ctrl.Session(), fmt.Errorf("read input: %w", err)
	}
	return ctrl.Session(), nil
}
