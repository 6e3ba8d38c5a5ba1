package index

// SampleText is the built-in input used when no source is given.
const SampleText = `Text splitting in LangChain is a critical feature. Users can leverage LangChain for text splitting. LangChain allows users
to efficiently navigate and analyze vast amounts of text data. Text splitting with LangChain facilitates a deeper understanding
and more insightful conclusions.

Text splitting facilitates the division of large texts into smaller, manageable segments.
This capability is vital for improving comprehension and processing efficiency.
It is especially important in tasks that require detailed analysis or extraction of specific contexts.

ChatGPT was developed by OpenAI. OpenAI developed ChatGPT. ChatGPT represents a leap forward in natural language processing
technologies. ChatGPT is a conversational AI model. ChatGPT is capable of understanding and generating human-like text. ChatGPT
allows for dynamic interactions. ChatGPT provides responses that are remarkably coherent and contextually relevant. ChatGPT has
been integrated into a multitude of applications. ChatGPT revolutionized the way we interact with machines. ChatGPT
revolutionized the way we access information.`
