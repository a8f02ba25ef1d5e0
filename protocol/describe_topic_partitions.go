package protocol

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tinkafka/tinkafka/serde"
	"github.com/tinkafka/tinkafka/types"
)

// defaultAuthorizedOperations is the operations bitmask reported for every
// topic: all topic-level operations allowed.
const defaultAuthorizedOperations = 0x00000df8

// nextCursor 0xFF signals that there are no more pages to fetch.
const nextCursorNone = 0xFF

// DescribeTopicPartitionsRequest is the decoded body of a
// DescribeTopicPartitions request. The cursor and tag bytes that follow the
// partition limit on the wire are not interpreted.
type DescribeTopicPartitionsRequest struct {
	Topics                 CompactArray[TopicName]
	ResponsePartitionLimit int32
}

// DecodeDescribeTopicPartitionsRequest decodes the topic-name array and the
// response-partition limit from the request body.
func DecodeDescribeTopicPartitionsRequest(body []byte) (DescribeTopicPartitionsRequest, error) {
	topics, err := DecodeCompactArray[TopicName](body)
	if err != nil {
		return DescribeTopicPartitionsRequest{}, fmt.Errorf("decoding topics: %w", err)
	}
	end := topics.BytesConsumed + 4
	if end > uint64(len(body)) {
		return DescribeTopicPartitionsRequest{}, fmt.Errorf("%w: missing response partition limit", serde.ErrInvalidBuffer)
	}
	limit, err := serde.DecodeInt32(body[topics.BytesConsumed:end])
	if err != nil {
		return DescribeTopicPartitionsRequest{}, err
	}
	return DescribeTopicPartitionsRequest{Topics: topics, ResponsePartitionLimit: limit}, nil
}

// DescribeTopicPartitions (Api key = 75)
//
// No topic store exists, so every requested topic comes back as unknown
// with a zeroed topic id and no partitions.
func (d *Dispatcher) getDescribeTopicPartitionsResponse(req types.Request) ([]byte, error) {
	request, err := DecodeDescribeTopicPartitionsRequest(req.Body)
	if err != nil {
		return nil, err
	}

	encoder := serde.NewEncoder()
	encoder.PutInt32(uint32(req.CorrelationID))
	encoder.PutInt32(0) // throttle_time_ms
	encoder.PutCompactArrayLen(len(request.Topics.Elements))
	for _, topic := range request.Topics.Elements {
		encoder.PutInt16(uint16(ErrUnknownTopicOrPartition.Code))
		encoder.PutCompactString(topic.Text)
		encoder.PutBytes(uuid.Nil[:])
		encoder.PutBool(false)        // is_internal
		encoder.PutCompactArrayLen(0) // partitions
		encoder.PutInt32(defaultAuthorizedOperations)
		encoder.EndStruct()
	}
	encoder.PutInt8(nextCursorNone)
	encoder.EndStruct()
	encoder.PutLen()
	return encoder.Bytes(), nil
}
