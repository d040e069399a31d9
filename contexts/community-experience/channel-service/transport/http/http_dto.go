package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ChannelDTO struct {
	ChannelID string `json:"channel_id"`
	Name      string `json:"name"`
	OwnerID   string `json:"owner_id"`
	CreatedAt string `json:"created_at"`
}

type MembershipDTO struct {
	UserID       string `json:"user_id"`
	ChannelID    string `json:"channel_id"`
	SubscribedAt string `json:"subscribed_at"`
}

type MessageDTO struct {
	MessageID  string `json:"message_id"`
	ChannelID  string `json:"channel_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name,omitempty"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type CreateChannelRequest struct {
	Name string `json:"name"`
}

type CreateChannelResponse struct {
	Status string `json:"status"`
	Data   struct {
		Channel ChannelDTO `json:"channel"`
	} `json:"data"`
}

type DeleteChannelResponse struct {
	Status string `json:"status"`
	Data   struct {
		ChannelID string `json:"channel_id"`
		Deleted   bool   `json:"deleted"`
	} `json:"data"`
}

type SubscribeRequest struct {
	ChannelID string `json:"channel_id"`
}

type SubscribeResponse struct {
	Status string `json:"status"`
	Data   struct {
		Membership MembershipDTO `json:"membership"`
	} `json:"data"`
}

type PostMessageRequest struct {
	Content string `json:"content"`
}

type PostMessageResponse struct {
	Status string `json:"status"`
	Data   struct {
		Message MessageDTO `json:"message"`
	} `json:"data"`
}

type ListMessagesResponse struct {
	Status string `json:"status"`
	Data   struct {
		Messages []MessageDTO `json:"messages"`
	} `json:"data"`
}

type EditMessageRequest struct {
	Content string `json:"content"`
}

type EditMessageResponse struct {
	Status string `json:"status"`
	Data   struct {
		Message MessageDTO `json:"message"`
	} `json:"data"`
}

type DeleteMessageResponse struct {
	Status string `json:"status"`
	Data   struct {
		MessageID string `json:"message_id"`
		Deleted   bool   `json:"deleted"`
	} `json:"data"`
}
