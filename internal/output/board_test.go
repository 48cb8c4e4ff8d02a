package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/chessmatch-go/internal/chess"
	"github.com/lgbarn/chessmatch-go/internal/config"
	"github.com/lgbarn/chessmatch-go/internal/testutil"
)

func TestRenderBoard(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.OutputConfig
		want string
	}{
		{
			name: "white side with labels",
			cfg:  config.OutputConfig{ShowCoordinates: true},
			want: "8 r n b q k b n r\n" +
				"7 p p p p p p p p\n" +
				"6 . . . . . . . .\n" +
				"5 . . . . . . . .\n" +
				"4 . . . . . . . .\n" +
				"3 . . . . . . . .\n" +
				"2 P P P P P P P P\n" +
				"1 R N B Q K B N R\n" +
				"  a b c d e f g h\n",
		},
		{
			name: "black side without labels",
			cfg:  config.OutputConfig{Flip: true},
			want: "R N B K Q B N R\n" +
				"P P P P P P P P\n" +
				". . . . . . . .\n" +
				". . . . . . . .\n" +
				". . . . . . . .\n" +
				". . . . . . . .\n" +
				"p p p p p p p p\n" +
				"r n b k q b n r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			testutil.AssertNoError(t, RenderBoard(&buf, testutil.MustNewMatch(t), tt.cfg))
			testutil.AssertEqual(t, buf.String(), tt.want)
		})
	}
}

func TestRenderBoard_AfterCapture(t *testing.T) {
	m := testutil.MustNewMatch(t)
	testutil.MustPlay(t, m, "e2e4", "d7d5", "e4d5")

	var buf bytes.Buffer
	testutil.AssertNoError(t, RenderBoard(&buf, m, config.OutputConfig{ShowCoordinates: true}))
	lines := strings.Split(buf.String(), "\n")
	testutil.AssertEqual(t, lines[3], "5 . . . P . . . .")
	testutil.AssertEqual(t, lines[4], "4 . . . . . . . .")
	testutil.AssertEqual(t, lines[6], "2 P P P P . P P P")
}

func TestWriteStatus(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
		want  string
	}{
		{"start", nil, "Move 1, White to play\n"},
		{"check", []string{"e2e4", "f7f6", "d1h5"}, "Move 2, Black to play, in check\n"},
		{"mate", []string{"f2f3", "e7e5", "g2g4", "d8h4"}, "Checkmate, Black wins (0-1)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.MustNewMatch(t)
			testutil.MustPlay(t, m, tt.moves...)
			var buf bytes.Buffer
			testutil.AssertNoError(t, WriteStatus(&buf, m))
			testutil.AssertEqual(t, buf.String(), tt.want)
		})
	}
}

func TestWriteStatus_Stalemate(t *testing.T) {
	m := testutil.MustFENMatch(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteStatus(&buf, m))
	testutil.AssertEqual(t, buf.String(), "Stalemate (1/2-1/2)\n")
}

func TestWriteMoveLog(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		moves   []string
		maxLine int
		want    string
	}{
		{
			name:    "unfinished",
			moves:   []string{"e2e4", "e7e5", "g1f3"},
			maxLine: 80,
			want:    "1. e4 e5 2. Nf3 *\n",
		},
		{
			name:    "finished with result",
			moves:   []string{"f2f3", "e7e5", "g2g4", "d8h4"},
			maxLine: 80,
			want:    "1. f3 e5 2. g4 Qh4# 0-1\n",
		},
		{
			name:    "wrapped",
			moves:   []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6"},
			maxLine: 20,
			want:    "1. e4 e5 2. Nf3 Nc6\n3. Bc4 Nf6 *\n",
		},
		{
			name:    "black starts",
			fen:     "4k3/8/8/8/8/8/4P3/4K3 b - - 0 12",
			moves:   []string{"e8d7", "e2e4"},
			maxLine: 80,
			want:    "12... Kd7 13. e4 *\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.MustNewMatch(t)
			if tt.fen != "" {
				m = testutil.MustFENMatch(t, tt.fen)
			}
			testutil.MustPlay(t, m, tt.moves...)

			var buf bytes.Buffer
			WriteMoveLog(&buf, m, tt.maxLine)
			testutil.AssertEqual(t, buf.String(), tt.want)
		})
	}
}

func TestMatchSnapshot(t *testing.T) {
	m := testutil.MustNewMatch(t)
	testutil.MustPlay(t, m, "e2e4", "d7d5", "e4d5")

	snap := MatchSnapshot(m)
	testutil.AssertEqual(t, len(snap.Pieces), 31, "captured pawn omitted")
	testutil.AssertEqual(t, snap.Turn, chess.Black)
	testutil.AssertEqual(t, snap.MoveNumber, 2)
	testutil.AssertEqual(t, snap.Moves, []string{"e4", "d5", "exd5"})
	testutil.AssertEqual(t, snap.FEN, m.FEN())
	testutil.AssertTrue(t, snap.Outcome == nil, "game still running")

	for _, p := range snap.Pieces {
		dest, err := m.LegalDestinationsFor(p.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, p.Moves, dest.Moves)
		testutil.AssertEqual(t, p.Captures, dest.Captures)
	}

	data, err := SnapshotJSON(m)
	testutil.AssertNoError(t, err)
	var doc struct {
		Turn       string `json:"turn"`
		KingStates struct {
			White string `json:"white"`
			Black string `json:"black"`
		} `json:"king_states"`
		Pieces []json.RawMessage `json:"pieces"`
	}
	testutil.AssertNoError(t, json.Unmarshal(data, &doc))
	testutil.AssertEqual(t, doc.Turn, "black")
	testutil.AssertEqual(t, doc.KingStates.White, "NotInCheck")
	testutil.AssertEqual(t, len(doc.Pieces), 31)
}
