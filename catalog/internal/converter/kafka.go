package converter

import (
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/you-humble/biomarket/catalog/internal/model"
)

const (
	fieldEventUUID   = "event_uuid"
	fieldBusinessID  = "business_id"
	fieldCID         = "cid"
	fieldPublishedAt = "published_at"
)

type converter struct{}

func NewKafkaCoverter() *converter { return &converter{} }

// ProductPublishedToPayload encodes the event as a protobuf Struct so that
// consumers without generated code can still read it.
func (c *converter) ProductPublishedToPayload(m model.ProductPublished) ([]byte, error) {
	pb, err := structpb.NewStruct(map[string]any{
		fieldEventUUID:   m.EventID.String(),
		fieldBusinessID:  m.BusinessID,
		fieldCID:         m.CID,
		fieldPublishedAt: m.PublishedAt.UTC().Format(timeLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build protobuf struct: %w", err)
	}

	payload, err := proto.Marshal(pb)
	if err != nil {
		return nil, fmt.Errorf("failed to mashal protobuf: %w", err)
	}

	return payload, nil
}

func (c *converter) ProductPublishedToModel(data []byte) (model.ProductPublished, error) {
	var pb structpb.Struct
	if err := proto.Unmarshal(data, &pb); err != nil {
		return model.ProductPublished{}, fmt.Errorf("failed to unmarshal protobuf: %w", err)
	}

	fields := pb.GetFields()

	eventID, err := uuid.Parse(fields[fieldEventUUID].GetStringValue())
	if err != nil {
		return model.ProductPublished{}, fmt.Errorf("invalid %s: %w", fieldEventUUID, err)
	}

	out := model.ProductPublished{
		EventID:    eventID,
		BusinessID: fields[fieldBusinessID].GetStringValue(),
		CID:        fields[fieldCID].GetStringValue(),
	}
	if out.BusinessID == "" || out.CID == "" {
		return model.ProductPublished{}, fmt.Errorf("event %s: business_id and cid are required", eventID)
	}

	if ts := fields[fieldPublishedAt].GetStringValue(); ts != "" {
		out.PublishedAt, err = parseTime(ts)
		if err != nil {
			return model.ProductPublished{}, fmt.Errorf("invalid %s: %w", fieldPublishedAt, err)
		}
	}

	return out, nil
}
