package messages

import (
	"bytes"
	"fmt"
	"io"

	messagefb "github.com/cbodonnell/beastball/flatbuffers/message"
	snapshotfb "github.com/cbodonnell/beastball/flatbuffers/snapshot"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

func SerializeMessage(m *Message) ([]byte, error) {
	b, err := SerializeMessageFlatbuffer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress message: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

func DeserializeMessage(data []byte) (*Message, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()
	b, err := io.ReadAll(io.LimitReader(compReader, MessageBufferSize*16))
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed message: %v", err)
	}

	message, err := DeserializeMessageFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return message, nil
}

func SerializeMessageFlatbuffer(m *Message) ([]byte, error) {
	builder := flatbuffers.NewBuilder(0)

	payload := builder.CreateByteVector(m.Payload)

	messagefb.MessageStart(builder)
	messagefb.MessageAddClientId(builder, m.ClientID)
	messagefb.MessageAddType(builder, byte(m.Type))
	messagefb.MessageAddPayload(builder, payload)
	messageOffset := messagefb.MessageEnd(builder)
	builder.Finish(messageOffset)
	b := builder.FinishedBytes()

	return b, nil
}

func DeserializeMessageFlatbuffer(b []byte) (m *Message, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("message too short: %d bytes", len(b))
	}
	// malformed buffers make the generated accessors index out of range
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("malformed message: %v", r)
		}
	}()

	message := &Message{}
	messageFlatbuffer := messagefb.GetRootAsMessage(b, 0)
	message.ClientID = messageFlatbuffer.ClientId()
	message.Type = MessageType(messageFlatbuffer.Type())
	message.Payload = messageFlatbuffer.PayloadBytes()

	return message, nil
}

func SerializeSnapshot(s *types.Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}
	builder := flatbuffers.NewBuilder(1024)
	snapshot := SerializeSnapshotFlatbuffer(builder, s)
	builder.Finish(snapshot)
	return builder.FinishedBytes(), nil
}

func DeserializeSnapshot(b []byte) (s *types.Snapshot, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("snapshot too short: %d bytes", len(b))
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("malformed snapshot: %v", r)
		}
	}()
	return SnapshotFlatbufferToSnapshot(snapshotfb.GetRootAsSnapshot(b, 0)), nil
}

func SerializeSnapshotFlatbuffer(builder *flatbuffers.Builder, s *types.Snapshot) flatbuffers.UOffsetT {
	players := make([]flatbuffers.UOffsetT, 0, len(s.Players))
	for i := range s.Players {
		players = append(players, SerializePlayerFlatbuffer(builder, &s.Players[i]))
	}
	snapshotfb.SnapshotStartPlayersVector(builder, len(players))
	for i := len(players) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(players[i])
	}
	playerVector := builder.EndVector(len(players))

	remaining := make([]byte, 0, len(s.Remaining))
	for _, id := range s.Remaining {
		remaining = append(remaining, byte(id))
	}
	remainingVector := builder.CreateByteVector(remaining)

	var beast, ball flatbuffers.UOffsetT
	if s.Beast != nil {
		beast = SerializeBeastFlatbuffer(builder, s.Beast)
	}
	if s.Ball != nil {
		ball = SerializeBallFlatbuffer(builder, s.Ball)
	}
	matchID := builder.CreateString(s.MatchID)

	snapshotfb.SnapshotStart(builder)
	snapshotfb.SnapshotAddMatchId(builder, matchID)
	snapshotfb.SnapshotAddTimestamp(builder, s.Timestamp)
	snapshotfb.SnapshotAddTick(builder, s.Tick)
	snapshotfb.SnapshotAddMatchState(builder, byte(s.MatchState))
	snapshotfb.SnapshotAddPlayers(builder, playerVector)
	snapshotfb.SnapshotAddRemaining(builder, remainingVector)
	snapshotfb.SnapshotAddBallCarrier(builder, int32(s.BallCarrier))
	snapshotfb.SnapshotAddLastPassingPlayer(builder, int32(s.LastPassingPlayer))
	if s.Beast != nil {
		snapshotfb.SnapshotAddBeast(builder, beast)
	}
	if s.Ball != nil {
		snapshotfb.SnapshotAddBall(builder, ball)
	}
	snapshotfb.SnapshotAddIsPowerShot(builder, s.IsPowerShot)
	snapshotfb.SnapshotAddPowerShotCharge(builder, s.PowerShotCharge)
	snapshotfb.SnapshotAddInfiniteLives(builder, s.InfiniteLives)
	snapshotfb.SnapshotAddBallSequenceTime(builder, s.BallSequenceTime)
	return snapshotfb.SnapshotEnd(builder)
}

func SerializePlayerFlatbuffer(builder *flatbuffers.Builder, p *types.PlayerRecord) flatbuffers.UOffsetT {
	name := builder.CreateString(p.Name)

	snapshotfb.PlayerStart(builder)
	snapshotfb.PlayerAddId(builder, int32(p.ID))
	snapshotfb.PlayerAddName(builder, name)
	snapshotfb.PlayerAddState(builder, byte(p.State))
	snapshotfb.PlayerAddLives(builder, int32(p.Lives))
	snapshotfb.PlayerAddKills(builder, int32(p.Kills))
	snapshotfb.PlayerAddHasBall(builder, p.HasBall)
	snapshotfb.PlayerAddHasKilled(builder, p.HasKilled)
	snapshotfb.PlayerAddIsAi(builder, p.IsAI)
	snapshotfb.PlayerAddIsGameOver(builder, p.IsGameOver)
	snapshotfb.PlayerAddIsWinner(builder, p.IsWinner)
	snapshotfb.PlayerAddBlinkOnCooldown(builder, p.BlinkOnCooldown)
	snapshotfb.PlayerAddBlinkCooldown(builder, p.BlinkCooldown)
	snapshotfb.PlayerAddColor(builder, packColor(p.Color))
	snapshotfb.PlayerAddPosition(builder, createVec3(builder, p.Position))
	snapshotfb.PlayerAddRotation(builder, p.Rotation)
	return snapshotfb.PlayerEnd(builder)
}

func SerializeBeastFlatbuffer(builder *flatbuffers.Builder, b *types.BeastState) flatbuffers.UOffsetT {
	snapshotfb.BeastStart(builder)
	snapshotfb.BeastAddSpeed(builder, b.Speed)
	snapshotfb.BeastAddRotationSpeed(builder, b.RotationSpeed)
	snapshotfb.BeastAddPosition(builder, createVec3(builder, b.Position))
	snapshotfb.BeastAddRotation(builder, b.Rotation)
	snapshotfb.BeastAddTarget(builder, int32(b.Target))
	snapshotfb.BeastAddMode(builder, byte(b.Mode))
	return snapshotfb.BeastEnd(builder)
}

func SerializeBallFlatbuffer(builder *flatbuffers.Builder, b *types.Ball) flatbuffers.UOffsetT {
	snapshotfb.BallStart(builder)
	snapshotfb.BallAddSource(builder, int32(b.Source))
	snapshotfb.BallAddTarget(builder, int32(b.Target))
	snapshotfb.BallAddInitial(builder, b.Initial)
	snapshotfb.BallAddIsPowerShot(builder, b.IsPowerShot)
	snapshotfb.BallAddCharge(builder, b.Charge)
	snapshotfb.BallAddPosition(builder, createVec3(builder, b.Position))
	snapshotfb.BallAddSpeed(builder, b.Speed)
	return snapshotfb.BallEnd(builder)
}

func SnapshotFlatbufferToSnapshot(fb *snapshotfb.Snapshot) *types.Snapshot {
	s := &types.Snapshot{
		MatchID:           string(fb.MatchId()),
		Timestamp:         fb.Timestamp(),
		Tick:              fb.Tick(),
		MatchState:        types.MatchState(fb.MatchState()),
		Players:           make([]types.PlayerRecord, 0, fb.PlayersLength()),
		Remaining:         make([]types.PlayerID, 0, fb.RemainingLength()),
		BallCarrier:       types.PlayerID(fb.BallCarrier()),
		LastPassingPlayer: types.PlayerID(fb.LastPassingPlayer()),
		IsPowerShot:       fb.IsPowerShot(),
		PowerShotCharge:   fb.PowerShotCharge(),
		InfiniteLives:     fb.InfiniteLives(),
		BallSequenceTime:  fb.BallSequenceTime(),
	}
	player := &snapshotfb.Player{}
	for i := 0; i < fb.PlayersLength(); i++ {
		if fb.Players(player, i) {
			s.Players = append(s.Players, PlayerFlatbufferToPlayerRecord(player))
		}
	}
	for i := 0; i < fb.RemainingLength(); i++ {
		s.Remaining = append(s.Remaining, types.PlayerID(fb.Remaining(i)))
	}
	if beast := fb.Beast(nil); beast != nil {
		s.Beast = &types.BeastState{
			Speed:         beast.Speed(),
			RotationSpeed: beast.RotationSpeed(),
			Position:      vec3ToVector(beast.Position(nil)),
			Rotation:      beast.Rotation(),
			Target:        types.PlayerID(beast.Target()),
			Mode:          types.BeastMode(beast.Mode()),
		}
	}
	if ball := fb.Ball(nil); ball != nil {
		s.Ball = &types.Ball{
			Source:      types.PlayerID(ball.Source()),
			Target:      types.PlayerID(ball.Target()),
			Initial:     ball.Initial(),
			IsPowerShot: ball.IsPowerShot(),
			Charge:      ball.Charge(),
			Position:    vec3ToVector(ball.Position(nil)),
			Speed:       ball.Speed(),
		}
	}
	return s
}

func PlayerFlatbufferToPlayerRecord(fb *snapshotfb.Player) types.PlayerRecord {
	return types.PlayerRecord{
		ID:              types.PlayerID(fb.Id()),
		Name:            string(fb.Name()),
		State:           types.PlayerState(fb.State()),
		Lives:           int(fb.Lives()),
		Kills:           int(fb.Kills()),
		HasBall:         fb.HasBall(),
		HasKilled:       fb.HasKilled(),
		IsAI:            fb.IsAi(),
		IsGameOver:      fb.IsGameOver(),
		IsWinner:        fb.IsWinner(),
		Available:       true,
		BlinkOnCooldown: fb.BlinkOnCooldown(),
		BlinkCooldown:   fb.BlinkCooldown(),
		Color:           unpackColor(fb.Color()),
		Position:        vec3ToVector(fb.Position(nil)),
		Rotation:        fb.Rotation(),
	}
}

func createVec3(builder *flatbuffers.Builder, v kinematic.Vector) flatbuffers.UOffsetT {
	return snapshotfb.CreateVec3(builder, v.X, v.Y, v.Z)
}

func vec3ToVector(v *snapshotfb.Vec3) kinematic.Vector {
	if v == nil {
		return kinematic.Zero
	}
	return kinematic.Vector{X: v.X(), Y: v.Y(), Z: v.Z()}
}

func packColor(c types.Color) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func unpackColor(v uint32) types.Color {
	return types.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}
