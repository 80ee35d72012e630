package player

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/trachwo/masters-of-shithead-sub000/game"
)

// Human lists the legal plays and reads the choice as a number from its
// input. "q" or the end of the input quits the round.
type Human struct {
	name string
	in   *bufio.Reader
	out  io.Writer
	task task[game.Play]
}

func newHuman(name string, in io.Reader, out io.Writer) *Human {
	return &Human{name: name, in: bufio.NewReader(in), out: out}
}

func (h *Human) SelectPlay(plays []game.Play, s *game.State) (game.Play, bool) {
	if h.task.started() {
		return h.task.poll()
	}
	if len(plays) == 1 && plays[0].Action == game.Out {
		return plays[0], true
	}

	me := s.CurrentPlayer()
	var b strings.Builder
	for i, play := range plays {
		fmt.Fprintf(&b, "%d:%s ", i, Label(me, play))
	}
	b.WriteString("q:QUIT")
	fmt.Fprintln(h.out, b.String())

	choices := append([]game.Play(nil), plays...)
	h.task.start(func() game.Play {
		return h.read(choices)
	})
	return game.Play{}, false
}

func (h *Human) read(plays []game.Play) game.Play {
	for {
		fmt.Fprintf(h.out, "Select play (0-%d): ", len(plays)-1)
		line, err := h.in.ReadString('\n')
		text := strings.TrimSpace(line)
		if text == "q" || (err != nil && text == "") {
			return game.NewPlay(game.Quit)
		}
		sel, convErr := strconv.Atoi(text)
		if convErr == nil && sel >= 0 && sel < len(plays) {
			return plays[sel]
		}
		fmt.Fprintf(h.out, "Please enter an integer between 0 and %d!\n", len(plays)-1)
		if err != nil {
			return game.NewPlay(game.Quit)
		}
	}
}

// Label names a play with the card it refers to.
func Label(p *game.Player, play game.Play) string {
	switch play.Action {
	case game.Hand:
		return "PLAY-" + p.Hand[play.Index].String()
	case game.FaceUp:
		return "PLAY-" + p.FaceUp[play.Index].String()
	case game.FaceDown:
		return "PLAY-" + strconv.Itoa(play.Index)
	case game.Get:
		return "GET-" + p.FaceUp[play.Index].String()
	case game.Put:
		return "PUT-" + p.Hand[play.Index].String()
	case game.Show:
		return "SHOW-" + p.Hand[play.Index].String()
	}
	return play.Action.String()
}
